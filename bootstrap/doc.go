// Package bootstrap runs a service around a feign client context.
//
// NewApp validates the service config, initialises logging and builds the
// client context from a config.Source. The context is registered as the
// first lifecycle component; services add their own after it.
//
//	var cfg MyConfig
//	_ = config.LoadConfig("orders-service", &cfg)
//	src := config.LoadSource("orders-service")
//
//	app, err := bootstrap.NewApp(&cfg, src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	orders, _ := app.Feign.Client("orders")
//	_ = app.Run(context.Background())
package bootstrap
