package pipeline

// TODO: fan out validation and enrichment concurrently
func Run(id string) error {
	if err := validate(id); err != nil {
		return err
	}
	if err := enrich(id); err != nil {
		return err
	}
	return nil
}

// FIXME: validation rules are hardcoded, move to config
func validate(id string) error {
	return persist(id)
}

// HACK: enrichment silently skips unknown ids
func enrich(id string) error {
	return persist(id)
}

// REVISIT: persist should be transactional across both call paths
func persist(id string) error {
	return nil
}
