package driver

import "context"

// Ping verifies connectivity and authentication.
func (d *driver) Ping(ctx context.Context) error {
	d.logger.Debug("Starting ping to server", "address", d.conn.Address())

	err := d.neo.VerifyConnectivity(ctx)
	if d.observability != nil {
		d.observability.recordConnectionEvent(connectionVerified, d.config.Observability, err)
	}
	if err != nil {
		d.logger.Error("Ping failed", "address", d.conn.Address(), "error", err)
		return err
	}

	d.logger.Debug("Ping successful")
	return nil
}
