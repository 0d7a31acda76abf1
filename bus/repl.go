package bus

import (
	"context"
	"fmt"

	"github.com/nescore/nesgo/cpu"
)

// REPL is a developer convenience carried over from the corpus's own
// debug console: breakpoints, single-stepping, memory dump and a reset
// button, gated behind the emu binary's -repl flag. It mutates no
// emulation semantics; it only observes and occasionally pokes PC.
func REPL(ctx context.Context, c *cpu.CPU, b *Bus) {
	breaks := make(map[uint16]struct{})

	for {
		fmt.Printf("%s\n\n", c)
		fmt.Println("(B)reak - add breakpoint")
		fmt.Println("(C)lear - clear breakpoints")
		fmt.Println("(R)un - run until a breakpoint or halt")
		fmt.Println("(S)tep - step one instruction")
		fmt.Println("R(e)set - hit the reset button")
		fmt.Println("(M)emory - dump an address range")
		fmt.Println("(Q)uit - leave the debugger")
		fmt.Print("Choice: ")

		var in rune
		fmt.Scanf("%c\n", &in)

		switch in {
		case 'b', 'B':
			breaks[readAddress("Breakpoint (e.g. ff15): ")] = struct{}{}
		case 'c', 'C':
			breaks = make(map[uint16]struct{})
		case 'q', 'Q':
			return
		case 'r', 'R':
			runUntilBreak(ctx, c, breaks)
		case 's', 'S':
			if err := c.Step(); err != nil {
				fmt.Printf("step error: %v\n\n", err)
			}
		case 'e', 'E':
			c.Reset()
		case 'm', 'M':
			dumpMemory(b)
		}
	}
}

func runUntilBreak(ctx context.Context, c *cpu.CPU, breaks map[uint16]struct{}) {
	for !c.Halted {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if _, hit := breaks[c.PC]; hit {
			return
		}
		if err := c.Step(); err != nil {
			fmt.Printf("run error: %v\n\n", err)
			return
		}
	}
}

func dumpMemory(b *Bus) {
	low := readAddress("Low address (e.g. f00d): ")
	high := readAddress("High address (e.g. beef): ")
	fmt.Println()

	col := 0
	for addr := low; ; addr++ {
		fmt.Printf("%04x: %02x  ", addr, b.Read(addr))
		col++
		if col%5 == 0 {
			fmt.Println()
		}
		if addr == high || addr == 0xFFFF {
			break
		}
	}
	fmt.Printf("\n\n")
}

func readAddress(prompt string) uint16 {
	var a uint16
	fmt.Print(prompt)
	fmt.Scanf("%04x\n", &a)
	return a
}
