package environmentmanager

type EnvironmentManager interface {
	Get(key string) (string, error)
	Set(key, value string) error
}
