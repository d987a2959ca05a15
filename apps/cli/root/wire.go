package root

import (
	"github.com/zenGate-Global/palmyra-hosting/apps/cli/cmd/bootstrap"
	"github.com/zenGate-Global/palmyra-hosting/apps/cli/cmd/cliconfig"
	servercmd "github.com/zenGate-Global/palmyra-hosting/apps/cli/cmd/server"
	sitecmd "github.com/zenGate-Global/palmyra-hosting/apps/cli/cmd/site"
	templatecmd "github.com/zenGate-Global/palmyra-hosting/apps/cli/cmd/template"
)

func init() {
	cliconfig.AddPersistentFlags(Root())
	Root().AddCommand(bootstrap.Command())
	Root().AddCommand(servercmd.Command())
	Root().AddCommand(templatecmd.Command())
	Root().AddCommand(sitecmd.Command())
}
