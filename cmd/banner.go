package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/netlogs/tui"
)

var bannerLines = []string{
	"@@@  @@@  @@@@@@@@  @@@@@@@  @@@        @@@@@@    @@@@@@@@   @@@@@@ ",
	"@@@@ @@@  @@@@@@@@  @@@@@@@  @@@       @@@@@@@@  @@@@@@@@@  @@@@@@@ ",
	"@@!@!@@@  @@!         @@!    @@!       @@!  @@@  !@@        !@@     ",
	"!@!!@!@!  !@!         !@!    !@!       !@!  @!@  !@!        !@!     ",
	"@!@ !!@!  @!!!:!      @!!    @!!       @!@  !@!  !@! @!@!@  !!@@!!  ",
	"!@!  !!!  !!!!!:      !!!    !!!       !@!  !!!  !!! !!@!!   !!@!!! ",
	"!!:  !!!  !!:         !!:    !!:       !!:  !!!  :!!   !!:       !:!",
	":!:  !:!  :!:         :!:     :!:      :!:  !:!  :!:   !::      !:! ",
	" ::   ::   :: ::::     ::     :: ::::  ::::: ::   ::: ::::  :::: :: ",
	"::    :   : :: ::      :     : :: : :   : :  :    :: :: :   :: : :  ",
}

// RenderBanner returns the styled banner for the help and version screens
func RenderBanner() string {
	var sb strings.Builder
	for i, line := range bannerLines {
		// top half pink, bottom half faded
		c := tui.RGBPink
		if i >= len(bannerLines)/2 {
			c = tui.RGBGrey
		}
		sb.WriteString(lipgloss.NewStyle().Foreground(c).Bold(true).Render(line))
		sb.WriteString("\n")
	}

	subtitle := lipgloss.NewStyle().Foreground(tui.RGBBlue).Italic(true).
		Render("network logs, searched in the terminal")

	return lipgloss.NewStyle().Align(lipgloss.Left).MarginBottom(1).
		Render(sb.String() + subtitle)
}
