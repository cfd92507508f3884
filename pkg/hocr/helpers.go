package hocr

// Words returns every word of the page in reading order: areas first, then
// paragraphs and lines that sit outside any area.
func (p Page) Words() []Word {
	var words []Word
	for _, a := range p.Areas {
		words = append(words, a.AllWords()...)
	}
	for _, par := range p.Paragraphs {
		words = append(words, par.AllWords()...)
	}
	for _, l := range p.Lines {
		words = append(words, l.Words...)
	}
	return words
}

// AllWords returns the words of the area, its paragraphs and its lines.
func (a Area) AllWords() []Word {
	var words []Word
	for _, par := range a.Paragraphs {
		words = append(words, par.AllWords()...)
	}
	for _, l := range a.Lines {
		words = append(words, l.Words...)
	}
	return append(words, a.Words...)
}

// AllWords returns the words of the paragraph's lines followed by any
// words directly under it.
func (p Paragraph) AllWords() []Word {
	var words []Word
	for _, l := range p.Lines {
		words = append(words, l.Words...)
	}
	return append(words, p.Words...)
}

func texts(words []Word) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, w.Text)
	}
	return out
}
