package ac

import (
	"bytes"
	"strings"

	ahocorasick "github.com/anknown/ahocorasick"
)

// Filter 基于Aho-Corasick自动机的敏感词过滤器, 构建后只读, 可并发使用
type Filter struct {
	m *ahocorasick.Machine
}

// readRunes 将字符串字典转换为rune切片数组, 用于Aho-Corasick算法的输入格式要求
func readRunes(dict []string) (runes [][]rune) {
	seen := make(map[string]struct{}, len(dict))
	for _, word := range dict {
		word = strings.ToLower(word)       // 转换为小写，实现大小写不敏感匹配
		l := bytes.TrimSpace([]byte(word)) // 去除前后空白字符
		if len(l) == 0 {
			continue
		}
		if _, ok := seen[string(l)]; ok {
			continue
		}
		seen[string(l)] = struct{}{}
		runes = append(runes, bytes.Runes(l)) // 将字符串转换为rune切片，支持中文等多字节字符
	}
	return runes
}

// NewFilter 根据关键词字典初始化过滤器, 字典为空时过滤器不拦截任何内容
func NewFilter(dict []string) (*Filter, error) {
	runes := readRunes(dict)
	if len(runes) == 0 {
		return &Filter{}, nil
	}
	m := new(ahocorasick.Machine)
	if err := m.Build(runes); err != nil { // 构建AC自动机的Trie树结构
		return nil, err
	}
	return &Filter{m: m}, nil
}

// Search 多模式串搜索
// stopImmediately: 是否找到第一个匹配就停止搜索
// 返回是否命中以及命中的关键词(去重)
func (f *Filter) Search(text string, stopImmediately bool) (bool, []string) {
	if f == nil || f.m == nil || len(text) == 0 {
		return false, nil
	}

	hits := f.m.MultiPatternSearch([]rune(strings.ToLower(text)), stopImmediately)
	if len(hits) == 0 {
		return false, nil
	}
	words := make([]string, 0, len(hits))
	seen := make(map[string]struct{}, len(hits))
	for _, hit := range hits {
		w := string(hit.Word) // 将匹配到的rune切片转换回字符串
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return true, words
}
