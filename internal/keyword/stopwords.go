package keyword

// stopWords is the fixed filter applied after segmentation: common Chinese
// function words plus the generic request verbs users put in wishlist text
// (求购, 想要, ...), which carry no signal about the item itself.
// Loaded once at init, never mutated.
var stopWords = make(map[string]struct{})

var stopWordList = []string{
	"的", "了", "和", "是", "在", "有", "我", "他", "她", "它", "们",
	"这", "那", "就", "也", "都", "会", "能", "要", "可", "不", "没",
	"很", "还", "但", "又", "或", "与", "及", "等", "对", "把", "被",
	"让", "给", "向", "从", "到", "以", "为", "着", "过", "来", "去",
	"上", "下", "里", "外", "前", "后", "左", "右", "中", "大", "小",
	"多", "少", "高", "低", "长", "短", "好", "坏", "新", "旧", "想",
	"需要", "希望", "求购", "寻找", "想要", "能够", "可以",
}

func init() {
	for _, w := range stopWordList {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether the token is filtered out during extraction.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}
