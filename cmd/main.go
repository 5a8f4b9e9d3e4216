package main

import "github.com/MikkiMyers/notion-postgres-bidirectional-sync/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()

	app.InitNotionClient()
	app.InitSyncServices()
	app.RunBackfillIfEnabled()

	app.StartOutboundScanner()
	defer app.StopOutboundScanner()

	app.MustListenAndServeHTTP()
}
