package main

import (
	"log"
	"strings"

	"yatube/cache"
	"yatube/config"
	"yatube/db"
	"yatube/handlers"
	"yatube/models"
	"yatube/storage"

	"github.com/gin-gonic/autotls"
)

func main() {
	db.Init()
	models.Init()
	storage.Init()

	router := handlers.NewRouter(cache.New())

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
