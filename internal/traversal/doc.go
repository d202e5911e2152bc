// Package traversal computes single-source hop distances over a graph.Graph
// with two interchangeable engines.
//
// Engines
//
//   - Serial: the reference breadth-first search. One FIFO queue; a node is
//     discovered the first time it is seen as a neighbor of a dequeued node.
//   - Parallel: level-synchronous fork-join BFS. The frontier of level k is
//     split into contiguous chunks, one per worker. Workers claim neighbors
//     with an atomic compare-and-set on the discovered flag; the winner
//     writes distance k+1 and keeps the node in a worker-local buffer. A
//     barrier join ends the level and the buffers are merged (sorted) into
//     the frontier of level k+1.
//
// Both engines write into their own State, so runs never share mutable
// data. For any graph and source the two distance arrays are identical.
//
// Concurrency
//
//	The graph is only read during a run. In Parallel, discovered/distance/
//	parent entries are written exactly once, by the worker that won the
//	claim, and every write of level k+1 happens-before the partitioning of
//	level k+2 (errgroup.Wait is the barrier). No lock is taken.
//
// Options
//
//   - WithContext(ctx): checked between levels (Parallel) or dequeues
//     (Serial); a cancelled run returns the partial State and ctx.Err().
//   - WithWorkers(p): Parallel pool size, p >= 1 (default 4).
//   - WithMaxDepth(d): do not discover nodes beyond depth d (0 = no limit).
//   - WithOnLevel(fn): called once per level with the frontier size.
//
// Errors
//
//   - ErrNilGraph              graph pointer is nil.
//   - graph.ErrIndexOutOfRange source outside [0, n).
//   - ErrOptionViolation       invalid option value.
//   - context errors           from WithContext.
//
// Complexity (dense adjacency, V nodes)
//
//   - Serial:   O(V²/64) word scans, O(V) memory.
//   - Parallel: the same work divided across P workers per level, plus one
//     O(F log F) sort of each merged frontier of size F.
package traversal
