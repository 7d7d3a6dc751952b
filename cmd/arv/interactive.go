package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/term"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/report"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/types"
)

// browseComps lets the user move through the ranked comp set with arrow keys
// and press Enter to view one comp's full details.
func browseComps(set types.ComparableSet) {
	if len(set.Comps) == 0 {
		return
	}

	if runtime.GOOS == "windows" {
		enableVT()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Println("(interactive selection not supported on this terminal)")
		return
	}
	defer term.Restore(fd, oldState)

	reader := bufio.NewReader(os.Stdin)

	lines := make([]string, len(set.Comps))
	for i, c := range set.Comps {
		lines[i] = fmt.Sprintf("%-36s %10s  %6s/sf  %4.2f mi  score %.2f",
			c.Address, report.Currency(c.SalePrice), report.Currency(c.PricePerSqft()),
			c.DistanceMiles, c.Score)
	}

	selected := 0

	redraw := func() {
		fmt.Print("\033[H\033[2J")
		for i, l := range lines {
			prefix := "  "
			if i == selected {
				prefix = "> "
			}
			fmt.Println(prefix + l)
		}
		fmt.Println("(↑/↓ to navigate, Enter to view details, Esc to quit)")
	}

	showDetails := func() {
		term.Restore(fd, oldState)
		fmt.Println()
		printCompDetails(set.Comps[selected])

		fmt.Print("\n(press Enter to return)")
		_, _ = bufio.NewReader(os.Stdin).ReadBytes('\n')

		oldState, err = term.MakeRaw(fd)
		reader = bufio.NewReader(os.Stdin)
		redraw()
	}

	redraw()

	for {
		b1, err := reader.ReadByte()
		if err != nil {
			return
		}
		// Windows console arrow sequences (0 or 224, then code)
		if b1 == 0 || b1 == 224 {
			b2, _ := reader.ReadByte()
			switch b2 {
			case 72: // up
				if selected > 0 {
					selected--
					redraw()
				}
			case 80: // down
				if selected < len(set.Comps)-1 {
					selected++
					redraw()
				}
			case 13: // Enter
				showDetails()
			}
			continue
		}

		switch b1 {
		case 27: // ESC or ANSI sequence
			if reader.Buffered() == 0 {
				fmt.Println()
				return
			}
			b2, _ := reader.ReadByte()
			if b2 != '[' {
				continue
			}
			if reader.Buffered() == 0 {
				continue
			}
			b3, _ := reader.ReadByte()
			switch b3 {
			case 'A': // up
				if selected > 0 {
					selected--
					redraw()
				}
			case 'B': // down
				if selected < len(set.Comps)-1 {
					selected++
					redraw()
				}
			}
		case '\r', '\n':
			showDetails()
		case 3: // Ctrl-C
			fmt.Println()
			return
		default:
			// ignore other keys
		}
	}
}

func printCompDetails(c types.ScoredComp) {
	fmt.Printf("Address           : %s\n", c.FullAddress())
	fmt.Printf("Beds/Bath         : %d / %g\n", c.Bedrooms, c.Bathrooms)
	fmt.Printf("Living Area (sf)  : %.0f\n", c.SquareFootage)
	if c.YearBuilt > 0 {
		fmt.Printf("Year Built        : %d\n", c.YearBuilt)
	}
	if c.Condition != "" {
		fmt.Printf("Condition         : %s\n", c.Condition)
	}
	fmt.Printf("Sale Price        : %s\n", report.Currency(c.SalePrice))
	fmt.Printf("Sale Date         : %s\n", c.SaleDate.Format("01/02/2006"))
	fmt.Printf("Price per sqft    : %s\n", report.Currency(c.PricePerSqft()))
	fmt.Printf("Distance          : %.2f miles\n", c.DistanceMiles)
	fmt.Printf("Similarity Weight : %.3f\n", c.Weight)
}
