package main

import "github.com/fdemirciler/tax-calculator-gemini/internal/cli"

func main() {
	cli.Execute()
}
