package trainerflags

import "github.com/projectdiscovery/gologger"

var banner = `
              _____         _
 ____   ____ / ____|__ _ _ _(_) ___  ___ ___
|  _ \ / __|| |  _ / _` + "`" + ` | | | |/ _ \/ __/ __|
| |_) | (__ | |_| | (_| | |_| |  __/\__ \__ \
|  __/ \___|\_____|\__,_|\__,_|\___||___/___/
|_|                         train
`

var version = "v0.0.1"

func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
}
