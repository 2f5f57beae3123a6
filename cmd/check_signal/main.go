package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fractrade/fraclib/internal/domain"
)

// Reads an interchange document from a file argument (or stdin), runs it
// through the codec, and prints either the validated signal or the reason it
// was rejected. Useful for checking a producer's output by hand.
func main() {
	var data []byte
	var err error
	if len(os.Args) > 1 {
		data, err = os.ReadFile(os.Args[1])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Printf("Failed to read input: %v\n", err)
		os.Exit(1)
	}

	sig, err := domain.FromJSON(data)
	if err != nil {
		fmt.Printf("INVALID: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: %s %s %s %s %s (%s%% of capital)\n",
		sig.SignalID, sig.Symbol, sig.Side, sig.OrderType, sig.TradeType,
		sig.AmountCapitalPercent.String())

	out, err := sig.ToJSON()
	if err != nil {
		fmt.Printf("Failed to re-encode: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
