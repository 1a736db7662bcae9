// Command extract is the CLI entry point: extract INPUT [OUTPUT] [-c CONFIG.json].
package main

import "github.com/hr95savage/semantic-blocks/internal/cli"

func main() {
	cli.Execute()
}
