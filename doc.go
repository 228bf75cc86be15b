// Package quota computes daily and weekly study quotas.
//
// Given a set of subjects with remaining work, optional deadlines, buffer
// days and priorities, the Engine decides which subjects are active (capped
// by Settings.MaxConcurrentSubjects), how the period's time budget is split
// between them, how many units each must cover, and whether the learner has
// already met each quota according to the progress log.
//
// The package performs no I/O. Subjects and settings are plain snapshots,
// progress is read through the caller-supplied ProgressLookup, and the
// current time is always passed in.
//
// Basic usage:
//
//	settings := quota.DefaultSettings().Apply(quota.SettingsOverrides{
//	    DailyStudyHours: ptr(1.5),
//	})
//	daily, err := quota.ComputeDailyQuota(subjects, settings, quota.Records(logs), time.Now())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, item := range daily.Items {
//	    fmt.Println(item.SubjectName, item.UnitsRequired, item.Status)
//	}
package quota
