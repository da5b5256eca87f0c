//go:build blackbox

package blackbox

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

func contains(s, sub string) bool { return strings.Contains(s, sub) }

func f64(x float64) string {
	return fmt.Sprintf("%.4f", x)
}

// writeFillsCSV writes n fills a minute apart, alternating SELL and BUY.
func writeFillsCSV(t *testing.T, path string, n int, priceFn func(i int) float64) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	start := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	fmt.Fprintln(f, "timestamp,side,price,amount,order_id")
	for i := 0; i < n; i++ {
		side := "SELL"
		if i%2 == 1 {
			side = "BUY"
		}
		fmt.Fprintf(f, "%s,%s,%s,100,ord-%d\n",
			start.Add(time.Duration(i)*time.Minute).Format(time.RFC3339), side, f64(priceFn(i)), i)
	}
}

func writeConfig(t *testing.T, path, yaml string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
}
