package driver

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/seuros/gopher-graph/src/cypher"
)

// Run executes query text and returns the converted records.
func (d *driver) Run(ctx context.Context, query string) ([]cypher.Record, error) {
	records, _, err := d.RunWithSummary(ctx, query)
	return records, err
}

// RunWithSummary executes query text in a managed transaction. Transient
// failures are retried by the neo4j driver's transaction functions.
func (d *driver) RunWithSummary(ctx context.Context, query string) ([]cypher.Record, *ResultSummary, error) {
	startTime := time.Now()

	if d.config.Logging != nil && d.config.Logging.LogQueryTiming {
		d.logger.Info("Executing query", "query", query)
	} else {
		d.logger.Debug("Executing query", "query", query)
	}

	summary := &ResultSummary{
		QueryText:     query,
		ServerAddress: d.conn.Address(),
		Database:      d.config.database(d.conn),
		QueryType:     inferQueryType(query),
	}

	var spanCtx *spanContext
	if d.observability != nil && d.config.Observability != nil {
		ctx, spanCtx = d.observability.startQuerySpan(ctx, query, d.config.Observability)
	}

	session := d.neo.NewSession(ctx, d.sessionConfig())
	defer func() {
		if err := session.Close(ctx); err != nil {
			d.logger.Warn("Failed to close session", "error", err)
		}
	}()

	work := func(tx neo4j.ManagedTransaction) ([]cypher.Record, error) {
		result, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}
		keys, err := result.Keys()
		if err != nil {
			return nil, err
		}
		summary.Columns = keys
		raw, err := result.Collect(ctx)
		if err != nil {
			return nil, err
		}
		resultSummary, err := result.Consume(ctx)
		if err != nil {
			return nil, err
		}
		fillSummary(summary, resultSummary)
		return convertRecords(raw), nil
	}

	var records []cypher.Record
	var err error
	if d.config.AccessMode == AccessModeRead {
		records, err = neo4j.ExecuteRead(ctx, session, work)
	} else {
		records, err = neo4j.ExecuteWrite(ctx, session, work)
	}

	summary.ExecutionTime = time.Since(startTime)
	summary.RecordsConsumed = int64(len(records))

	if spanCtx != nil {
		d.observability.finishQuerySpan(spanCtx, summary, err, d.config.Observability)
	}

	if err != nil {
		d.logger.Error("Query failed", "query", query, "duration", summary.ExecutionTime, "error", err)
		return nil, summary, err
	}

	if d.config.Logging != nil && d.config.Logging.LogQueryTiming {
		d.logger.Info("Query completed", "duration", summary.ExecutionTime, "records", summary.RecordsConsumed, "type", summary.QueryType)
	}
	for _, n := range summary.Notifications {
		d.logger.Warn("Server notification", "code", n.Code, "title", n.Title, "description", n.Description)
	}

	return records, summary, nil
}

func (d *driver) sessionConfig() neo4j.SessionConfig {
	mode := neo4j.AccessModeWrite
	if d.config.AccessMode == AccessModeRead {
		mode = neo4j.AccessModeRead
	}
	return neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: d.config.database(d.conn),
	}
}

func fillSummary(summary *ResultSummary, rs neo4j.ResultSummary) {
	if rs == nil {
		return
	}
	if server := rs.Server(); server != nil {
		summary.ServerAddress = server.Address()
		summary.ServerAgent = server.Agent()
	}
	if db := rs.Database(); db != nil && db.Name() != "" {
		summary.Database = db.Name()
	}

	counters := rs.Counters()
	summary.NodesCreated = int64(counters.NodesCreated())
	summary.NodesDeleted = int64(counters.NodesDeleted())
	summary.RelationshipsCreated = int64(counters.RelationshipsCreated())
	summary.RelationshipsDeleted = int64(counters.RelationshipsDeleted())
	summary.PropertiesSet = int64(counters.PropertiesSet())
	summary.LabelsAdded = int64(counters.LabelsAdded())
	summary.LabelsRemoved = int64(counters.LabelsRemoved())
	summary.ContainsUpdates = counters.ContainsUpdates()

	summary.Notifications = summary.Notifications[:0]
	for _, n := range rs.Notifications() {
		summary.Notifications = append(summary.Notifications, Notification{
			Code:        n.Code(),
			Title:       n.Title(),
			Description: n.Description(),
			Severity:    n.RawSeverityLevel(),
		})
	}
}
