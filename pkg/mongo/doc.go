// Package mongo connects the MongoDB client behind the usage ledger's
// document-store option. Deployments already running Mongo can keep usage
// counters there via usage.NewMongoStore instead of adding Postgres or
// Redis just for counting.
//
//	var cfg mongo.Config
//	if err := config.Load(&cfg); err != nil {
//	    panic(err)
//	}
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "entitlements")
//	if err != nil {
//	    panic(err)
//	}
//
//	store := usage.NewMongoStore(db)
package mongo
