// Command mamerun_libretro builds the libretro core:
//
//	go build -buildmode=c-shared -o mamerun_libretro.so ./cmd/mamerun_libretro
package main

import "C"

import (
	"github.com/bji/libretromame/enginetest"
	"github.com/bji/libretromame/libretro"
)

func init() {
	libretro.RegisterEngine(enginetest.New(enginetest.DemoGames()...))
}

func main() {}
