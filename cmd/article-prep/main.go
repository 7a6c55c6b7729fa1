package main

import cmd "github.com/rohmanhakim/article-prep/internal/cli"

func main() {
	cmd.Execute()
}
