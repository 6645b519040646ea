package main

import (
	"os"

	"slpece/cmd"
)

// @title                       Slpece API
// @version                     1.0
// @description                 儿童故事学习应用后端：故事库、背景音乐、认证、识别与故事生成
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
