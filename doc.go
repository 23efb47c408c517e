// Package fastmrmr provides mRMR (minimum-Redundancy-Maximum-Relevance)
// feature selection for discretized datasets in Go.
//
// A dataset is a matrix of one-byte values, N samples by F features, with one
// feature designated as the class. The selector greedily picks the features
// that share the most mutual information with the class while sharing the
// least with the features already picked.
//
// # Quick Start
//
//	ds, err := dataset.Load("data.mrmr")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine, err := info.NewEngine(ds)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	selector, err := mrmr.NewFromEngine(engine, mrmr.Config{ClassIndex: 0, Count: 10})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := selector.Run(nil)
//	fmt.Println(res.Selected)
//
// # Packages
//
//   - dataset: binary dataset loader, feature-major storage and value ranges
//   - info: marginal and joint probability tables, mutual information
//   - mrmr: the greedy selection state machine
//   - preprocessing: MRMRSelector, a Fit/Transform wrapper over gonum matrices
//   - report: relevance and score bar charts
//   - pkg/config: immutable run configuration and YAML loading
//   - pkg/errors: structured error types with stack traces
//   - pkg/log: structured logging backed by zerolog
//   - pkg/instrument: Prometheus metrics for a run
//   - cmd/fast-mrmr: the command-line tool
//
// # File Format
//
// A dataset file starts with two uint32 values in the platform's byte order,
// the sample count N and the feature count F, followed by N×F bytes stored
// sample by sample. Each byte is the discretized value of one feature for one
// sample.
//
// # Command Line
//
//	fast-mrmr -f data.mrmr -c 1 -a 11
//
// prints the 0-based indices of the selected features, comma separated, as
// they are chosen, followed by the elapsed time.
package fastmrmr
