package core

// EmplaceAs is Emplace for a typed factory.
func EmplaceAs[T Component](u *Unit, build func() T) (T, error) {
	var zero T
	c, err := u.Emplace(typed(build))
	if err != nil {
		return zero, err
	}
	return c.(T), nil
}

// InstallAs is Slot.Install for a typed factory.
func InstallAs[T Component](s *Slot, build func() T) (T, error) {
	var zero T
	c, err := s.Install(typed(build))
	if err != nil {
		return zero, err
	}
	return c.(T), nil
}

// AddAs is Collection.Add for a typed factory.
func AddAs[T Component](c *Collection, build func() T) (T, error) {
	var zero T
	m, err := c.Add(typed(build))
	if err != nil {
		return zero, err
	}
	return m.(T), nil
}

func typed[T Component](build func() T) Factory {
	if build == nil {
		return nil
	}
	return func() Component { return build() }
}
