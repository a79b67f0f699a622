package service

// TODO: validate input before processing the order
func ProcessOrder(id string) error {
	if err := chargePayment(id); err != nil {
		return err
	}
	return nil
}

// FIXME: retries are not idempotent, duplicate charges possible
func chargePayment(id string) error {
	return notifyLedger(id)
}

// HACK: ledger notification is fire-and-forget, errors are swallowed
func notifyLedger(id string) error {
	return nil
}
