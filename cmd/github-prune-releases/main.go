package main

import "github.com/fabien-marty/github-push-release/internal/infra/controllers/cli"

// The pruning is never done by github-push-release, this binary must be invoked explicitly.
func main() {
	cli.PruneReleasesMain()
}
