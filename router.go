// Code generated by hertz generator.

package main

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	router "github.com/xh-polaris/recruit-core-api/biz/router"
)

// register registers all routers.
func register(r *server.Hertz) {
	router.GeneratedRegister(r)
}
