// The sdramsim command simulates an SDRAM controller driving a memory device
// cycle by cycle.
package main

func main() {
	Execute()
}
