package vulkan

import (
	"fmt"
	"sort"

	vk "github.com/goki/vulkan"
)

// CapabilityUnavailableError reports a required instance extension,
// device extension or layer the driver does not provide.
type CapabilityUnavailableError struct {
	Kind string
	Name string
}

func (e *CapabilityUnavailableError) Error() string {
	return fmt.Sprintf("%s %s is not available", e.Kind, e.Name)
}

// capabilitySet tracks which names of one capability kind the driver
// offers and which of those have been enabled so far. The driver is
// queried once, at construction.
type capabilitySet struct {
	kind    string
	enabled map[string]bool
	// NUL-terminated names handed to the driver. The set owns this
	// storage so the pointers stay valid for the whole create call.
	names []string
}

func newCapabilitySet(kind string, available []string) *capabilitySet {
	cs := &capabilitySet{
		kind:    kind,
		enabled: make(map[string]bool, len(available)),
	}
	for _, name := range available {
		cs.enabled[name] = false
	}
	return cs
}

// Check reports whether every required name is available, without
// enabling anything.
func (cs *capabilitySet) Check(required []string) error {
	for _, name := range required {
		if _, ok := cs.enabled[name]; !ok {
			return &CapabilityUnavailableError{Kind: cs.kind, Name: name}
		}
	}
	return nil
}

// Add enables every required name, failing on the first one the driver
// does not offer. Already-enabled names are accepted silently.
func (cs *capabilitySet) Add(required []string) error {
	if err := cs.Check(required); err != nil {
		return err
	}
	for _, name := range required {
		if !cs.enabled[name] {
			cs.enabled[name] = true
			cs.names = append(cs.names, VulkanSafeString(name))
		}
	}
	return nil
}

// AddIfAvailable enables the name when the driver offers it and reports
// whether it did. Used for optional capabilities such as portability
// extensions.
func (cs *capabilitySet) AddIfAvailable(name string) bool {
	if _, ok := cs.enabled[name]; !ok {
		return false
	}
	if !cs.enabled[name] {
		cs.enabled[name] = true
		cs.names = append(cs.names, VulkanSafeString(name))
	}
	return true
}

// EnabledNames returns the enabled names, NUL-terminated, in the order
// they were added. The returned slice is owned by the set.
func (cs *capabilitySet) EnabledNames() []string {
	return cs.names
}

// AvailableNames returns every name the driver offers, sorted. Useful
// for debug logging.
func (cs *capabilitySet) AvailableNames() []string {
	names := make([]string, 0, len(cs.enabled))
	for name := range cs.enabled {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func enumerateInstanceExtensions() ([]string, error) {
	var count uint32
	if res := vk.EnumerateInstanceExtensionProperties("", &count, nil); !ResultIsSuccess(res) {
		return nil, fmt.Errorf("vkEnumerateInstanceExtensionProperties failed with %s", ResultString(res))
	}
	props := make([]vk.ExtensionProperties, count)
	if res := vk.EnumerateInstanceExtensionProperties("", &count, props); !ResultIsSuccess(res) {
		return nil, fmt.Errorf("vkEnumerateInstanceExtensionProperties failed with %s", ResultString(res))
	}
	names := make([]string, 0, count)
	for i := range props {
		props[i].Deref()
		names = append(names, vk.ToString(props[i].ExtensionName[:]))
	}
	return names, nil
}

func enumerateInstanceLayers() ([]string, error) {
	var count uint32
	if res := vk.EnumerateInstanceLayerProperties(&count, nil); !ResultIsSuccess(res) {
		return nil, fmt.Errorf("vkEnumerateInstanceLayerProperties failed with %s", ResultString(res))
	}
	props := make([]vk.LayerProperties, count)
	if res := vk.EnumerateInstanceLayerProperties(&count, props); !ResultIsSuccess(res) {
		return nil, fmt.Errorf("vkEnumerateInstanceLayerProperties failed with %s", ResultString(res))
	}
	names := make([]string, 0, count)
	for i := range props {
		props[i].Deref()
		names = append(names, vk.ToString(props[i].LayerName[:]))
	}
	return names, nil
}

func enumerateDeviceExtensions(device vk.PhysicalDevice) ([]string, error) {
	var count uint32
	if res := vk.EnumerateDeviceExtensionProperties(device, "", &count, nil); !ResultIsSuccess(res) {
		return nil, fmt.Errorf("vkEnumerateDeviceExtensionProperties failed with %s", ResultString(res))
	}
	props := make([]vk.ExtensionProperties, count)
	if res := vk.EnumerateDeviceExtensionProperties(device, "", &count, props); !ResultIsSuccess(res) {
		return nil, fmt.Errorf("vkEnumerateDeviceExtensionProperties failed with %s", ResultString(res))
	}
	names := make([]string, 0, count)
	for i := range props {
		props[i].Deref()
		names = append(names, vk.ToString(props[i].ExtensionName[:]))
	}
	return names, nil
}
