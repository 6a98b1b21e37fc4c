// Package jobs provides scheduled background tasks for the parcel tracker.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field and skip a run
// while the previous one is still going.
//
// # Available Jobs
//
//  1. LifecycleTickJob - sweeps the shipment ledger every second so parcels
//     move from loading to transit, delivery attempts and terminal states
//  2. SnapshotJob - saves the parcel records every minute
//
// # Usage
//
//	jobManager := jobs.NewJobManager(advanceHandler, snapshotHandler, kernel.SystemClock, jobs.Schedules{}, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// A failed start stops any job that was already running.
package jobs
