package service

// TODO: validate input before processing the order
func ProcessOrder(id string) error {
	return nil
}
