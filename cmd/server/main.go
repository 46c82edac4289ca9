package main

// @title           Shelfshare Authors API
// @version         1.0
// @description     API for managing authors and their books in Shelfshare.

// @contact.name   Sina Niyavarzi
// @contact.email  sinaniya@gmail.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
