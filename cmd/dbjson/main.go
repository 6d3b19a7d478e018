package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fulldump/goconfig"

	"github.com/fulldump/dbjson/bootstrap"
	"github.com/fulldump/dbjson/configuration"
	"github.com/fulldump/dbjson/logger"
)

var VERSION = "dev"

var banner = `
     _ _     _
  __| | |__ (_)___  ___  _ __
 / _' | '_ \| / __|/ _ \| '_ \
| (_| | |_) | \__ \ (_) | | | |
 \__,_|_.__// |___/\___/|_| |_|
          |__/     version ` + VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(c)

	if c.Version {
		fmt.Println("Version:", VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	l, err := logger.New(c.Debug)
	if err != nil {
		fmt.Println("ERROR:", err.Error())
		os.Exit(-1)
	}
	defer l.Sync()

	start, _, err := bootstrap.Bootstrap(c, l)
	if err != nil {
		l.Sugar().Errorf("bootstrap: %s", err.Error())
		os.Exit(-1)
	}

	start()
}
