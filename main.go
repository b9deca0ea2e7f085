package main

import (
	"log"

	"git.lost.host/meutraa/eotf/internal/config"
)

func main() {
	config.Parse()

	p := &Program{}
	if err := p.Init(); nil != err {
		log.Fatalln(err)
	}
	defer p.Deinit()
	if err := p.Run(); nil != err {
		log.Fatalln(err)
	}
}
