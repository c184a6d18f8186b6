package main

import "github.com/fabien-marty/github-push-release/internal/infra/controllers/cli"

func main() {
	cli.PushReleaseMain()
}
