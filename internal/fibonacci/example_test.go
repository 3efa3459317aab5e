package fibonacci

import (
	"context"
	"fmt"
)

func ExampleCompute() {
	fmt.Printf("%dth Fibonacci Number is %s\n", 15, Compute(15))
	// Output:
	// 15th Fibonacci Number is 610
}

func ExampleComputeUint64() {
	v, err := ComputeUint64(93)
	fmt.Println(v, err)

	_, err = ComputeUint64(94)
	fmt.Println(err)
	// Output:
	// 12200160415121876738 <nil>
	// term 94 overflows a 64-bit unsigned integer
}

func ExampleDefaultFactory() {
	factory := NewDefaultFactory()
	fmt.Println(factory.List())

	calc, err := factory.Get(AlgoFast)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	result, err := calc.Calculate(context.Background(), nil, 0, 100, Options{})
	if err != nil {
		fmt.Printf("Calculation error: %v\n", err)
		return
	}
	fmt.Println(calc.Name())
	fmt.Println(result)
	// Output:
	// [fast iterative]
	// Fast Doubling (O(log n))
	// 354224848179261915075
}
