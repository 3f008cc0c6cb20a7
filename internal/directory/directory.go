package directory

// Directory is an immutable, id-unique snapshot of registered doctors in
// registration order. Mutations return a new Directory and leave the receiver
// untouched, so a snapshot handed to a reader never changes underneath it.
type Directory struct {
	doctors []Doctor
	index   map[string]int
}

// New builds a Directory from doctors. Later entries that repeat an earlier id
// are skipped.
func New(doctors ...Doctor) Directory {
	d := Directory{
		doctors: make([]Doctor, 0, len(doctors)),
		index:   make(map[string]int, len(doctors)),
	}
	for _, doc := range doctors {
		if _, exists := d.index[doc.ID]; exists {
			continue
		}
		d.index[doc.ID] = len(d.doctors)
		d.doctors = append(d.doctors, doc.Clone())
	}
	return d
}

// Len returns the number of doctors.
func (d Directory) Len() int {
	return len(d.doctors)
}

// Doctors returns a copy of every doctor in registration order.
func (d Directory) Doctors() []Doctor {
	out := make([]Doctor, len(d.doctors))
	for i, doc := range d.doctors {
		out[i] = doc.Clone()
	}
	return out
}

// Get returns the doctor with the given id.
func (d Directory) Get(id string) (Doctor, bool) {
	i, ok := d.index[id]
	if !ok {
		return Doctor{}, false
	}
	return d.doctors[i].Clone(), true
}

// Contains reports whether id is registered.
func (d Directory) Contains(id string) bool {
	_, ok := d.index[id]
	return ok
}

// Register appends doc iff its id is not already present. The boolean reports
// whether the doctor was added; when false the receiver is returned as is.
func (d Directory) Register(doc Doctor) (Directory, bool) {
	if d.Contains(doc.ID) {
		return d, false
	}
	next := d.copyWithCap(len(d.doctors) + 1)
	next.index[doc.ID] = len(next.doctors)
	next.doctors = append(next.doctors, doc.Clone())
	return next, true
}

// UpdateProfile replaces only the fields set in patch on the doctor with the
// given id. An unknown id is a no-op that returns the receiver and false.
func (d Directory) UpdateProfile(id string, patch ProfilePatch) (Directory, bool) {
	i, ok := d.index[id]
	if !ok {
		return d, false
	}
	next := d.copyWithCap(len(d.doctors))
	next.doctors[i] = patch.Apply(d.doctors[i])
	return next, true
}

func (d Directory) copyWithCap(capacity int) Directory {
	next := Directory{
		doctors: make([]Doctor, len(d.doctors), capacity),
		index:   make(map[string]int, capacity),
	}
	copy(next.doctors, d.doctors)
	for id, i := range d.index {
		next.index[id] = i
	}
	return next
}
