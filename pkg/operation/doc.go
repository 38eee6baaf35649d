/*
Package operation runs one independent gate pipeline per document.

	+-------+     +--------+     +-------------------+
	| paths | --> | Runner | --> | fn(ctx, path) ... |
	+-------+     +--------+     +-------------------+

🎯 Purpose:
- Runs a per-document function over a list of paths
- Serially, or concurrently with a bounded number of workers
- Keeps going when one document fails and joins the errors

🔍 Example:

	r := operation.NewRunner(true, 4)
	err := r.Run(ctx, paths, func(ctx context.Context, path string) error {
		return processOne(ctx, path)
	})
*/
package operation
