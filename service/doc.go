// Package service exposes a greenlight Allocator over NATS request/reply.
//
// A Responder subscribes to a subject (optionally in a queue group, so several
// instances share the load) and answers every request with a plan computed by
// the Allocator. Plans are cached by fingerprint. The service keeps no state
// beyond that cache and talks to no signal controller.
//
// Wire format (JSON):
//
//	request: {"densities": [10, 30, 20, 40], "totalCycleTime": 120, "minGreenTime": 10}
//	reply:   {"greenTimes": [18, 34, 26, 42], "strategy": "proportional",
//	          "fingerprint": "9f0c...", "reconciliation": {"kind": "none", "lane": -1, "delta": 0}}
//	error:   {"error": "no lanes to allocate"}
//
// totalCycleTime and minGreenTime are optional and default to the Allocator's
// configuration.
//
// Example:
//
//	responder, err := service.NewResponder(nc, alloc, cfg.Service)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := responder.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer responder.Stop()
//
//	client, _ := service.NewClient(nc, cfg.Service.Subject, cfg.Service.RequestTimeout)
//	reply, err := client.Allocate(ctx, []float64{10, 30, 20, 40}, nil)
package service
