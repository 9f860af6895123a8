package runner

import (
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/pdping/pkg/version"
)

const banner = `
            __     _            
    ____  ____/ /___  (_)___  ____ _
   / __ \/ __  / __ \/ / __ \/ __ '/
  / /_/ / /_/ / /_/ / / / / / /_/ / 
 / .___/\__,_/ .___/_/_/ /_/\__, /  
/_/         /_/            /____/   
`

// showBanner is used to show the banner to the user
func showBanner() {
	gologger.Print().Msgf("%s\n", au.Bold(au.Blue(banner)))
	gologger.Print().Msgf("\t\tprojectdiscovery.io %s\n\n", au.Faint(version.GetVersion()))
}
