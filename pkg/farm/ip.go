package farm

import (
	"context"
	"net/url"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/loop/recurring"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/utils/netaddr"
)

// RefreshIP returns the recurring task measuring the device's IP.
//
// The probe opens a UDP socket towards the parent server (or a
// well-known public address when none is configured) and reads the
// local endpoint; nothing is sent. The task is best-effort: a failed
// cycle is reported through the policy's OnError and retried at the
// next tick.
func RefreshIP(farmStore db.FarmInterface) recurring.Task[struct{}] {
	return func(ctx context.Context, s struct{}) (struct{}, bool, error) {
		farm, err := farmStore.Singleton(ctx)
		if err != nil {
			return s, false, err
		}

		target := netaddr.DefaultProbeTarget
		if farm.ParentServerURL != nil && *farm.ParentServerURL != "" {
			if u, err := url.Parse(*farm.ParentServerURL); err == nil && u.Host != "" {
				target = u.Host
			}
		}

		ip, err := netaddr.LocalIP(target)
		if err != nil {
			return s, false, err
		}

		if farm.IP != nil && *farm.IP == ip {
			return s, false, nil
		}
		return s, false, farmStore.SetIP(ctx, farm.ID, ip)
	}
}
