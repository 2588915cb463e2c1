package presentation

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{` _____              _____          _   _         `, "#818cf8"},
	{`|_   _|_      _____|_   _| __ _   _| |_| |__  ___ `, "#a78bfa"},
	{`  | | \ \ /\ / / _ \ | || '__| | | | __| '_ \/ __|`, "#c084fc"},
	{`  | |  \ V  V / (_) || || |  | |_| | |_| | | \__ \`, "#e879f9"},
	{`  |_|   \_/\_/ \___/ |_||_|   \__,_|\__|_| |_|___/`, "#f472b6"},
}

// PrintBanner writes the startup banner to w, coloured when w supports it.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, out.String(line.text).Foreground(out.Color(line.color)))
	}
	fmt.Fprintln(w)
}
