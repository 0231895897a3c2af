package kerf_test

import (
	"fmt"

	"github.com/hejijunhao/kerf/pkg/kerf"
)

func Example() {
	a := kerf.New()
	a.Load(`2024-01-01 10:00:00 INFO user_id=abc123 GET /api/login 200
2024-01-01 10:00:05 ERROR user_id=abc123 POST /api/checkout 500 NullPointerException`)

	stats, _ := a.Statistics()
	fmt.Println("logs:", stats.TotalLogs, "errors:", stats.Errors)

	seq, _, _ := a.ErrorSequence("abc123")
	fmt.Println("first error at line", seq.FirstError.LineNumber)
	// Output:
	// logs: 2 errors: 1
	// first error at line 2
}

func ExampleAnalyzer_Journey() {
	a := kerf.New()
	a.Load(`2024-01-01 10:00:00 INFO user_id=john123 GET /api/login 200
2024-01-01 10:00:01 INFO user_id=alice9 GET /api/login 200
2024-01-01 10:00:02 ERROR user_id=john123 GET /api/orders 500`)

	journey, _ := a.Journey("john")
	for _, e := range journey {
		fmt.Println(e.LineNumber, e.Level, e.API.Method, e.API.Endpoint)
	}
	// Output:
	// 1 INFO GET /api/login
	// 3 ERROR GET /api/orders
}
