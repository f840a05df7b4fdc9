package main

import "github.com/Aliyansayz/candlestick-realtime/internal/cli"

func main() {
	cli.Execute()
}
