// Package eddy is a library for constructing and executing batch data
// processing pipelines over unordered collections.
//
// A pipeline is constructed as a deferred execution graph: transforms insert
// edges, PCollections connect them, and nothing runs until the pipeline is
// handed to a runner, such as the in-process direct runner. The programming
// model is deliberately small: ParDo for element-wise processing,
// GroupByKey to bring values for a key together, CombinePerKey to fold
// them, Create and Impulse for roots, and Flatten to merge collections.
//
// For example, a minimal word count:
//
//	p, s := eddy.NewPipelineWithRoot()
//	lines := textio.Read(s, "notes.txt")
//	words := eddy.ParDo(s, func(line string, emit func(string)) {
//		for _, w := range wordRE.FindAllString(line, -1) {
//			emit(w)
//		}
//	}, lines)
//	counts := stats.Count(s, words)
//	textio.Write(s, "counts.txt", wordcount.Format(s, counts))
//	_, err := eddy.Run(ctx, "direct", p)
package eddy
