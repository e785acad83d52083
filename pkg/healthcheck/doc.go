// Package healthcheck mounts liveness and readiness probes on an
// httpserver.Server and provides readiness checks for Redis and PostgreSQL.
//
// Liveness always answers 200 "ALIVE". Readiness runs every Check and
// answers 200 "READY" when all pass, or 503 "NOT_READY" on the first failure:
//
//	checks, closeFn, err := healthcheck.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer closeFn()
//
//	srv.Register([]httpserver.Plugin{
//	    healthcheck.Plugin(healthcheck.DefaultPaths(), log, checks...),
//	}, done)
//
// Probe routes are hit every few seconds by orchestrators; pair them with an
// accesslog formatter that suppresses their lines.
package healthcheck
