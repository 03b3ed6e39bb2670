package keydist_test

import (
	"context"
	"fmt"

	"github.com/joeycumines/go-keydist"
)

// Example demonstrates submitting work under a key and waiting on its
// result, using SameThreadExecutor so the example is deterministic
// without a real backend pool.
func Example() {
	d, err := keydist.New(keydist.SameThreadExecutor{})
	if err != nil {
		panic(err)
	}

	future, err := keydist.SubmitResult(d, "greeting", func() (string, error) {
		return "hello, keydist", nil
	})
	if err != nil {
		panic(err)
	}

	result, err := future.Get(context.Background())
	if err != nil {
		panic(err)
	}
	fmt.Println(result)

	// Output: hello, keydist
}
