package tokenizer

// Tokenizer converts text to and from the model's token ids and reports the
// model's context window.
type Tokenizer interface {
	Encode(text string) ([]int, error)
	// Decode of consecutive slices of one Encode result, concatenated, equals
	// Decode of the whole result.
	Decode(tokens []int) (string, error)
	MaxContextLength() int
}
