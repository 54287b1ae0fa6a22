package main

import "github.com/LPereira2025/Plano-Emagrecimento/cmd/plano"

func main() {
	plano.Execute()
}
