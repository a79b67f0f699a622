package pipeline

func Run(id string) error {
	return nil
}
