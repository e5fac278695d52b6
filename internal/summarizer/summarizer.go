package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/meeting-digest/internal/chunker"
	"github.com/nguyentantai21042004/meeting-digest/internal/errortypes"
	"github.com/nguyentantai21042004/meeting-digest/internal/prompt"
)

// Reduce chunks text, summarizes every chunk, then re-chunks and re-summarizes
// the joined partial summaries until a single call covers them.
func (s *implSummarizer) Reduce(ctx context.Context, text, prefix string) (res Result, err error) {
	budget, err := s.chunkBudget(prefix)
	if err != nil {
		return Result{}, err
	}

	tokens, err := s.encode(text)
	if err != nil {
		return Result{}, err
	}

	chunks, err := chunker.Chunk(tokens, budget)
	if err != nil {
		return Result{}, err
	}
	if len(chunks) == 0 {
		s.logger.Info(ctx, "Nothing to summarize: transcript is empty")
		return Result{}, nil
	}

	s.logger.Info(ctx, "Summarizing %d tokens in %d chunks (budget %d, context %d)",
		len(tokens), len(chunks), budget, s.tokenizer.MaxContextLength())

	var calls atomic.Int64
	defer func() { res.Calls = int(calls.Load()) }()

	partials, err := s.generateLevel(ctx, &calls, 0, chunks, prefix, prompt.RoleTranscript)
	if err != nil {
		return res, err
	}
	if len(partials) == 1 {
		res.Summary = partials[0]
		s.metrics.ObserveReduction(res.Levels)
		return res, nil
	}

	combined := strings.Join(partials, s.opts.Separator)
	for {
		if err := ctx.Err(); err != nil {
			return res, errortypes.Generation(err, "reduction cancelled")
		}

		final := prompt.Assemble(prefix, prompt.RolePartialSummaries, combined)
		finalTokens, err := s.encode(final)
		if err != nil {
			return res, err
		}

		if len(finalTokens) <= s.tokenizer.MaxContextLength() {
			s.logger.Debug(ctx, "Level %d: %d partial summaries fit one call (%d tokens)",
				res.Levels, len(partials), len(finalTokens))
			out, err := s.call(ctx, &calls, res.Levels, 0, prompt.RolePartialSummaries, final)
			if err != nil {
				return res, err
			}
			res.Summary = out
			s.metrics.ObserveReduction(res.Levels)
			return res, nil
		}

		res.Levels++
		if res.Levels > s.opts.MaxDepth {
			return res, errortypes.NotConverged("partial summaries still need %d tokens after %d levels",
				len(finalTokens), s.opts.MaxDepth)
		}

		combinedTokens, err := s.encode(combined)
		if err != nil {
			return res, err
		}
		chunks, err := chunker.Chunk(combinedTokens, budget)
		if err != nil {
			return res, err
		}

		s.logger.Info(ctx, "Level %d: re-chunking %d tokens of partial summaries into %d chunks",
			res.Levels, len(combinedTokens), len(chunks))

		partials, err = s.generateLevel(ctx, &calls, res.Levels, chunks, prefix, prompt.RolePartialSummaries)
		if err != nil {
			return res, err
		}
		// Back to the fit check, even for a single partial.
		combined = strings.Join(partials, s.opts.Separator)
	}
}

// chunkBudget returns the payload size of one chunk for prefix. The prompt
// wrapper of either role plus one chunk must fit the model context, and the
// chunk must stay larger than the generation cap so each level shrinks.
func (s *implSummarizer) chunkBudget(prefix string) (int, error) {
	overhead := 0
	for _, role := range []prompt.Role{prompt.RoleTranscript, prompt.RolePartialSummaries} {
		tokens, err := s.encode(prompt.Assemble(prefix, role, ""))
		if err != nil {
			return 0, err
		}
		if len(tokens) > overhead {
			overhead = len(tokens)
		}
	}

	ctxLen := s.tokenizer.MaxContextLength()
	if overhead >= ctxLen {
		return 0, errortypes.Configuration("prompt prefix needs %d tokens but the model context is %d",
			overhead, ctxLen)
	}

	budget := s.opts.ChunkTokens
	if payload := ctxLen - overhead; payload < budget {
		budget = payload
	}
	if budget <= s.opts.MaxOutputTokens {
		return 0, errortypes.Configuration("chunk budget %d left after a %d token prefix must exceed max output tokens %d",
			budget, overhead, s.opts.MaxOutputTokens)
	}
	return budget, nil
}

// generateLevel summarizes chunks with at most Concurrency calls in flight and
// returns the summaries in chunk order. The first failure stops the level:
// chunks not yet started are never sent.
func (s *implSummarizer) generateLevel(ctx context.Context, calls *atomic.Int64, level int, chunks [][]int, prefix string, role prompt.Role) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errortypes.Generation(err, "reduction cancelled")
	}
	partials := make([]string, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for i, chunk := range chunks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			payload, err := s.decode(chunk)
			if err != nil {
				return err
			}
			out, err := s.call(gctx, calls, level, i, role, prompt.Assemble(prefix, role, payload))
			if err != nil {
				return err
			}
			partials[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var typed *errortypes.Error
		if errors.As(err, &typed) {
			return nil, err
		}
		return nil, errortypes.Generation(err, "reduction cancelled")
	}
	if err := ctx.Err(); err != nil {
		return nil, errortypes.Generation(err, "reduction cancelled")
	}
	return partials, nil
}

// call runs one generation under the per-call timeout.
func (s *implSummarizer) call(ctx context.Context, calls *atomic.Int64, level, index int, role prompt.Role, p string) (string, error) {
	callCtx := ctx
	if s.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.opts.CallTimeout)
		defer cancel()
	}

	start := time.Now()
	s.logger.Debug(ctx, "Level %d chunk %d: generating (%s, %d bytes)", level, index, role, len(p))

	calls.Add(1)
	out, err := s.generator.Generate(callCtx, p)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			s.metrics.ObserveGeneration(role.String(), "timeout", time.Since(start))
			return "", errortypes.GenerationTimeout(err, errPosition(level, index))
		}
		s.metrics.ObserveGeneration(role.String(), "error", time.Since(start))
		return "", errortypes.Generation(err, errPosition(level, index))
	}

	s.metrics.ObserveGeneration(role.String(), "ok", time.Since(start))
	return out, nil
}

func (s *implSummarizer) encode(text string) ([]int, error) {
	tokens, err := s.tokenizer.Encode(text)
	if err != nil {
		return nil, asEncoding(err, "encode")
	}
	return tokens, nil
}

func (s *implSummarizer) decode(tokens []int) (string, error) {
	text, err := s.tokenizer.Decode(tokens)
	if err != nil {
		return "", asEncoding(err, "decode")
	}
	return text, nil
}

func asEncoding(err error, op string) error {
	var typed *errortypes.Error
	if errors.As(err, &typed) {
		return err
	}
	return errortypes.Encoding(err, op)
}

func errPosition(level, index int) string {
	return fmt.Sprintf("level %d chunk %d", level, index)
}
