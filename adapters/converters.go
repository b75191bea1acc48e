package adapters

import (
	"strconv"

	"myregistrar/domain"
)

// Wire shapes of the registry's instance-info document. The registry speaks
// a JSON rendering of its XML schema, hence the "$" and "@enabled" keys on
// ports and the "@class" on dataCenterInfo. @enabled is a string, not a bool.

// instanceDocument is the body of POST /apps/{app}: { "instance": {...} }.
type instanceDocument struct {
	Instance instanceInfo `json:"instance"`
}

type instanceInfo struct {
	InstanceID     string            `json:"instanceId"`
	HostName       string            `json:"hostName"`
	App            string            `json:"app"`
	IPAddr         string            `json:"ipAddr"`
	VIPAddress     string            `json:"vipAddress"`
	Status         string            `json:"status"`
	Port           portWrapper       `json:"port"`
	SecurePort     portWrapper       `json:"securePort"`
	DataCenterInfo dataCenterInfo    `json:"dataCenterInfo"`
	LeaseInfo      leaseInfo         `json:"leaseInfo"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	HealthCheckURL string            `json:"healthCheckUrl,omitempty"`
	StatusPageURL  string            `json:"statusPageUrl,omitempty"`
	HomePageURL    string            `json:"homePageUrl,omitempty"`
}

type portWrapper struct {
	Value   int    `json:"$"`
	Enabled string `json:"@enabled"`
}

type dataCenterInfo struct {
	Class string `json:"@class"`
	Name  string `json:"name"`
}

type leaseInfo struct {
	RenewalIntervalInSecs int `json:"renewalIntervalInSecs"`
	DurationInSecs        int `json:"durationInSecs"`
}

// toInstanceDocument maps a descriptor to the registry's instance-info
// document. The dataCenterInfo is a fixed non-AWS passthrough; lease
// durations are truncated to whole seconds because that is all the wire
// format carries.
func toInstanceDocument(d domain.InstanceDescriptor) instanceDocument {
	return instanceDocument{
		Instance: instanceInfo{
			InstanceID: d.InstanceID,
			HostName:   d.Hostname,
			App:        d.AppName,
			IPAddr:     d.HostIP,
			VIPAddress: d.VIPAddress,
			Status:     string(d.Status),
			Port: portWrapper{
				Value:   d.Port,
				Enabled: "true",
			},
			SecurePort: portWrapper{
				Value:   d.SecurePort,
				Enabled: strconv.FormatBool(d.SecurePort != 0),
			},
			DataCenterInfo: dataCenterInfo{
				Class: "com.netflix.appinfo.MyDataCenterInfo",
				Name:  "MyOwn",
			},
			LeaseInfo: leaseInfo{
				RenewalIntervalInSecs: int(d.LeaseRenewalInterval.Seconds()),
				DurationInSecs:        int(d.LeaseDuration.Seconds()),
			},
			Metadata:       d.Metadata,
			HealthCheckURL: d.HealthCheckURL,
			StatusPageURL:  d.StatusPageURL,
			HomePageURL:    d.HomePageURL,
		},
	}
}
