package catalog

// Shop mutations are copy-on-write: each returns a new Shop with one field or
// list changed and never shares backing arrays with the receiver.

// Clone returns a deep copy of s.
func (s Shop) Clone() Shop {
	out := s
	out.Services = cloneServices(s.Services)
	out.Staff = cloneStaff(s.Staff)
	out.Sales = cloneSales(s.Sales)
	return out
}

// ToggleOpen flips the open/closed flag.
func (s Shop) ToggleOpen() Shop {
	out := s.Clone()
	out.IsOpen = !s.IsOpen
	return out
}

// WithService appends svc to the service list.
func (s Shop) WithService(svc Service) Shop {
	out := s.Clone()
	svc.DemoPhotos = append([]string(nil), svc.DemoPhotos...)
	out.Services = append(out.Services, svc)
	return out
}

// WithoutService removes the service with id; ok is false when nothing matched.
func (s Shop) WithoutService(id string) (Shop, bool) {
	out := s.Clone()
	kept := out.Services[:0]
	for _, svc := range out.Services {
		if svc.ID != id {
			kept = append(kept, svc)
		}
	}
	removed := len(kept) != len(s.Services)
	out.Services = kept
	return out, removed
}

// WithStaff appends member to the staff list.
func (s Shop) WithStaff(member Staff) Shop {
	out := s.Clone()
	member.DemoPhotos = append([]string(nil), member.DemoPhotos...)
	out.Staff = append(out.Staff, member)
	return out
}

// WithoutStaff removes the staff member with id; ok is false when nothing matched.
func (s Shop) WithoutStaff(id string) (Shop, bool) {
	out := s.Clone()
	kept := out.Staff[:0]
	for _, st := range out.Staff {
		if st.ID != id {
			kept = append(kept, st)
		}
	}
	removed := len(kept) != len(s.Staff)
	out.Staff = kept
	return out, removed
}

func cloneServices(in []Service) []Service {
	if in == nil {
		return nil
	}
	out := make([]Service, len(in))
	for i, svc := range in {
		svc.DemoPhotos = append([]string(nil), svc.DemoPhotos...)
		out[i] = svc
	}
	return out
}

func cloneStaff(in []Staff) []Staff {
	if in == nil {
		return nil
	}
	out := make([]Staff, len(in))
	for i, st := range in {
		st.DemoPhotos = append([]string(nil), st.DemoPhotos...)
		out[i] = st
	}
	return out
}

func cloneSales(in []Sale) []Sale {
	if in == nil {
		return nil
	}
	out := make([]Sale, len(in))
	copy(out, in)
	return out
}
