// Package chunker splits token sequences into fixed-size windows.
package chunker

import "github.com/nguyentantai21042004/meeting-digest/internal/errortypes"

// Chunk partitions tokens into consecutive windows of maxTokens, starting at
// index 0. Only the last window may be shorter. Boundaries are purely
// positional and may fall mid-sentence.
//
// An empty input yields zero chunks. Each chunk is a copy of its window.
func Chunk(tokens []int, maxTokens int) ([][]int, error) {
	if maxTokens <= 0 {
		return nil, errortypes.Configuration("chunk budget must be positive, got %d", maxTokens)
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	chunks := make([][]int, 0, (len(tokens)+maxTokens-1)/maxTokens)
	for start := 0; start < len(tokens); start += maxTokens {
		end := start + maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		chunk := make([]int, end-start)
		copy(chunk, tokens[start:end])
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}
