package service

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern 至少两个字符的单词，\w 按 Unicode 字母数字计算
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// englishStopWords 与 scikit-learn 的 ENGLISH_STOP_WORDS 一致
var englishStopWords = toSet(strings.Fields(`
a about above across after afterwards again against all almost alone along already also
although always am among amongst amoungst amount an and another any anyhow anyone anything
anyway anywhere are around as at back be became because become becomes becoming been before
beforehand behind being below beside besides between beyond bill both bottom but by call can
cannot cant co con could couldnt cry de describe detail do done down due during each eg eight
either eleven else elsewhere empty enough etc even ever every everyone everything everywhere
except few fifteen fifty fill find fire first five for former formerly forty found four from
front full further get give go had has hasnt have he hence her here hereafter hereby herein
hereupon hers herself him himself his how however hundred i ie if in inc indeed interest into
is it its itself keep last latter latterly least less ltd made many may me meanwhile might
mill mine more moreover most mostly move much must my myself name namely neither never
nevertheless next nine no nobody none noone nor not nothing now nowhere of off often on once
one only onto or other others otherwise our ours ourselves out over own part per perhaps
please put rather re same see seem seemed seeming seems serious several she should show side
since sincere six sixty so some somehow someone something sometime sometimes somewhere still
such system take ten than that the their them themselves then thence there thereafter
thereby therefore therein thereupon these they thick thin third this those though three
through throughout thru thus to together too top toward towards twelve twenty two un under
until up upon us very via was we well were what whatever when whence whenever where
whereafter whereas whereby wherein whereupon wherever whether which while whither who
whoever whole whom whose why will with within without would yet you your yours yourself
yourselves`))

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// tokenize 小写化、切词并去除停用词
func tokenize(text string) []string {
	var tokens []string
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if _, stop := englishStopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// sparseVector 词表下标 -> 权重，下标升序
type sparseVector struct {
	indices []int
	weights []float64
}

func (v sparseVector) dot(o sparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.indices) && j < len(o.indices) {
		switch {
		case v.indices[i] == o.indices[j]:
			sum += v.weights[i] * o.weights[j]
			i++
			j++
		case v.indices[i] < o.indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// tfidfVectors 计算 L2 归一化的 TF-IDF 向量
// tf 为原始词频，idf = ln((1+n)/(1+df)) + 1
func tfidfVectors(docs []string) []sparseVector {
	vocab := map[string]int{}
	counts := make([]map[string]int, len(docs))
	df := map[string]int{}

	for i, doc := range docs {
		counts[i] = map[string]int{}
		for _, tok := range tokenize(doc) {
			counts[i][tok]++
		}
		for tok := range counts[i] {
			df[tok]++
		}
	}

	// 词表按字典序编号
	terms := make([]string, 0, len(df))
	for tok := range df {
		terms = append(terms, tok)
	}
	sort.Strings(terms)
	for i, tok := range terms {
		vocab[tok] = i
	}

	n := float64(len(docs))
	vectors := make([]sparseVector, len(docs))
	for i, tf := range counts {
		var v sparseVector
		for tok := range tf {
			v.indices = append(v.indices, vocab[tok])
		}
		sort.Ints(v.indices)

		var norm float64
		v.weights = make([]float64, len(v.indices))
		for k, idx := range v.indices {
			tok := terms[idx]
			idf := math.Log((1+n)/(1+float64(df[tok]))) + 1
			w := float64(tf[tok]) * idf
			v.weights[k] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for k := range v.weights {
				v.weights[k] /= norm
			}
		}
		vectors[i] = v
	}
	return vectors
}

// cosineMatrix 计算完整的两两余弦相似度矩阵，向量已归一化，点积即余弦
func cosineMatrix(vectors []sparseVector) [][]float64 {
	n := len(vectors)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s := vectors[i].dot(vectors[j])
			matrix[i][j] = s
			matrix[j][i] = s
		}
	}
	return matrix
}
