package kvstore

// Memory is an in-process Store used by tests and throwaway sessions.
type Memory struct {
	data map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, error) {
	value, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (m *Memory) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	delete(m.data, key)
	return nil
}

func (m *Memory) Close() error {
	m.data = nil
	return nil
}
