// Command poshtheme picks, applies and remembers Oh My Posh prompt themes.
//
// Usage:
//
//	poshtheme                 open the theme menu (table when not a terminal)
//	poshtheme select paradox  apply a theme by name
//	eval "$(poshtheme init --shell zsh)"
package main

import (
	"os"

	"github.com/vburojevic/poshtheme/internal/app"
)

func main() {
	os.Exit(app.Run())
}
