package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/okian/talentbench/internal/app"
	"github.com/okian/talentbench/internal/domain/metric"
	"github.com/okian/talentbench/internal/domain/model"
)

func assessmentWith(assessmentID, playerID string, ts time.Time, metrics map[metric.ID]float64) model.Assessment {
	return model.Assessment{
		AssessmentID: assessmentID,
		PlayerID:     playerID,
		TS:           ts,
		Metrics:      metrics,
	}
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service with full integration", t, func() {
		svc := service.New(
			service.WithWorkerCount(2),
			service.WithQueueSize(1000),
			service.WithDedupeSize(500),
		)
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		Convey("When starting the service", func() {
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And the service should be running", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
			})
		})

		Convey("When processing assessments end-to-end", func() {
			err := svc.Start(ctx)
			So(err, ShouldBeNil)

			// Give service time to start
			time.Sleep(100 * time.Millisecond)

			Convey("And enqueueing assessments for several players", func() {
				day := 24 * time.Hour
				base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

				assessments := []model.Assessment{
					assessmentWith("assessment-1", "player-1", base, map[metric.ID]float64{
						metric.PassingAccuracy:  60,
						metric.ShootingAccuracy: 55,
					}),
					assessmentWith("assessment-2", "player-2", base, map[metric.ID]float64{
						metric.PassingAccuracy:  90,
						metric.ShootingAccuracy: 85,
					}),
					assessmentWith("assessment-3", "player-1", base.Add(day), map[metric.ID]float64{
						metric.PassingAccuracy:  80,
						metric.ShootingAccuracy: 75,
					}),
				}

				for _, a := range assessments {
					So(svc.Enqueue(ctx, a), ShouldBeTrue)
				}

				// Give workers time to process
				time.Sleep(500 * time.Millisecond)

				Convey("Then the latest report should reflect the newest assessment", func() {
					b, err := svc.Report(ctx, "player-1")
					So(err, ShouldBeNil)
					So(b.AssessmentID, ShouldEqual, "assessment-3")
					So(b.Report.Composite.Valid, ShouldBeTrue)
				})

				Convey("And the trend should be ordered ascending", func() {
					points, err := svc.Trend(ctx, "player-1")
					So(err, ShouldBeNil)
					So(len(points), ShouldEqual, 2)
					So(points[0].TS.Before(points[1].TS), ShouldBeTrue)
					So(points[1].Composite.Value, ShouldBeGreaterThan, points[0].Composite.Value)
				})

				Convey("And the improvement badge should be earned", func() {
					earned, err := svc.Achievements(ctx, "player-1")
					So(err, ShouldBeNil)
					ids := make([]string, 0, len(earned))
					for _, e := range earned {
						ids = append(ids, e.RuleID)
					}
					So(ids, ShouldContain, "first_assessment")
					So(ids, ShouldContain, "on_the_rise")
				})

				Convey("And the leaderboard should be ordered by latest composite", func() {
					entries, err := svc.TopN(ctx, 10)
					So(err, ShouldBeNil)
					So(len(entries), ShouldEqual, 2)
					for i := 1; i < len(entries); i++ {
						So(entries[i-1].Composite, ShouldBeGreaterThanOrEqualTo, entries[i].Composite)
					}
					So(entries[0].PlayerID, ShouldEqual, "player-2")
				})
			})
		})

		Convey("When handling service lifecycle", func() {
			Convey("And starting and stopping multiple times", func() {
				err := svc.Start(ctx)
				So(err, ShouldBeNil)

				time.Sleep(100 * time.Millisecond)

				svc.Stop()

				time.Sleep(100 * time.Millisecond)

				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)

				err = svc.Start(ctx)
				So(err, ShouldBeNil)

				time.Sleep(100 * time.Millisecond)

				stats = svc.GetStats()
				So(stats["started"], ShouldEqual, true)
			})
		})

		Convey("When handling edge cases", func() {
			err := svc.Start(ctx)
			So(err, ShouldBeNil)

			time.Sleep(100 * time.Millisecond)

			Convey("And enqueueing assessments with extreme values", func() {
				extreme := []model.Assessment{
					assessmentWith("extreme-1", "player-extreme", time.Now(), map[metric.ID]float64{
						metric.PassingAccuracy: 0,
					}),
					assessmentWith("extreme-2", "player-extreme", time.Now(), map[metric.ID]float64{
						metric.PassingAccuracy: 1000,
					}),
					assessmentWith("extreme-3", "player-extreme", time.Now(), map[metric.ID]float64{
						metric.PassingAccuracy: -100,
					}),
				}

				for _, a := range extreme {
					So(svc.Enqueue(ctx, a), ShouldBeTrue)
				}

				time.Sleep(500 * time.Millisecond)

				Convey("Then composites should stay within bounds", func() {
					history, err := svc.History(ctx, "player-extreme")
					So(err, ShouldBeNil)
					So(len(history), ShouldEqual, 3)
					for _, b := range history {
						if b.Report.Composite.Valid {
							So(b.Report.Composite.Value, ShouldBeBetweenOrEqual, 0, 100)
						}
					}
				})
			})

			Convey("And enqueueing an assessment with no usable metrics", func() {
				a := assessmentWith("empty-1", "player-empty", time.Now(), map[metric.ID]float64{})

				So(svc.Enqueue(ctx, a), ShouldBeTrue)

				time.Sleep(500 * time.Millisecond)

				Convey("Then the report should be undefined rather than zero", func() {
					b, err := svc.Report(ctx, "player-empty")
					So(err, ShouldBeNil)
					So(b.Report.Composite.Valid, ShouldBeFalse)
					So(b.Report.Tier, ShouldBeEmpty)
				})
			})
		})
	})
}

func TestServiceConcurrency(t *testing.T) {
	Convey("Given a service with concurrent operations", t, func() {
		svc := service.New(
			service.WithWorkerCount(4),
			service.WithQueueSize(2000),
			service.WithDedupeSize(1000),
		)
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := svc.Start(ctx)
		So(err, ShouldBeNil)

		time.Sleep(100 * time.Millisecond)

		Convey("When multiple goroutines enqueue assessments concurrently", func() {
			numGoroutines := 10
			perGoroutine := 50
			done := make(chan bool, numGoroutines)

			for i := 0; i < numGoroutines; i++ {
				go func(goroutineID int) {
					for j := 0; j < perGoroutine; j++ {
						a := assessmentWith(
							fmt.Sprintf("concurrent-%d-%d", goroutineID, j),
							fmt.Sprintf("player-%d", goroutineID),
							time.Now(),
							map[metric.ID]float64{
								metric.PassingAccuracy: float64(50 + j),
							},
						)
						svc.Enqueue(ctx, a)
					}
					done <- true
				}(i)
			}

			for i := 0; i < numGoroutines; i++ {
				<-done
			}

			// Give workers time to process
			time.Sleep(2 * time.Second)

			Convey("Then all assessments should be processed", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)

				entries, err := svc.TopN(ctx, 100)
				So(err, ShouldBeNil)
				So(len(entries), ShouldEqual, numGoroutines)
			})
		})

		Convey("When multiple goroutines query concurrently", func() {
			So(svc.Enqueue(ctx, assessmentWith("seed-1", "seed-player", time.Now(), map[metric.ID]float64{
				metric.PassingAccuracy: 70,
			})), ShouldBeTrue)

			time.Sleep(200 * time.Millisecond)

			numGoroutines := 20
			done := make(chan bool, numGoroutines)
			errs := make(chan error, numGoroutines*20)

			for i := 0; i < numGoroutines; i++ {
				go func() {
					for j := 0; j < 10; j++ {
						entries, err := svc.TopN(ctx, 10)
						if err != nil {
							errs <- err
							continue
						}
						if entries == nil {
							errs <- fmt.Errorf("entries is nil")
							continue
						}

						if _, err := svc.Report(ctx, "seed-player"); err != nil {
							errs <- err
						}
					}
					done <- true
				}()
			}

			for i := 0; i < numGoroutines; i++ {
				<-done
			}

			Convey("Then all queries should succeed", func() {
				select {
				case err := <-errs:
					So(err, ShouldBeNil)
				default:
					So(true, ShouldBeTrue)
				}
			})
		})
	})
}

func TestServiceErrorHandling(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(
			service.WithWorkerCount(1),
			service.WithQueueSize(10),
			service.WithDedupeSize(5),
		)
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := svc.Start(ctx)
		So(err, ShouldBeNil)

		time.Sleep(100 * time.Millisecond)

		Convey("When querying an unknown player", func() {
			b, err := svc.Report(ctx, "non-existent-player")

			Convey("Then it should return an error", func() {
				So(err, ShouldNotBeNil)
				So(b.PlayerID, ShouldEqual, "")
			})
		})

		Convey("When fetching a trend for an unknown player", func() {
			points, err := svc.Trend(ctx, "non-existent-player")

			Convey("Then it should return an error", func() {
				So(err, ShouldNotBeNil)
				So(points, ShouldBeNil)
			})
		})

		Convey("When querying with invalid limits", func() {
			entries, err := svc.TopN(ctx, 0)

			Convey("Then it should return an error", func() {
				So(err, ShouldNotBeNil)
				So(entries, ShouldBeNil)
			})
		})

		Convey("When querying with negative limits", func() {
			entries, err := svc.TopN(ctx, -1)

			Convey("Then it should return an error", func() {
				So(err, ShouldNotBeNil)
				So(entries, ShouldBeNil)
			})
		})
	})
}

func TestServicePerformance(t *testing.T) {
	Convey("Given a service for performance testing", t, func() {
		svc := service.New(
			service.WithWorkerCount(8),
			service.WithQueueSize(10000),
			service.WithDedupeSize(5000),
		)
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := svc.Start(ctx)
		So(err, ShouldBeNil)

		time.Sleep(100 * time.Millisecond)

		Convey("When processing a large number of assessments", func() {
			numAssessments := 1000
			start := time.Now()

			for i := 0; i < numAssessments; i++ {
				a := assessmentWith(
					fmt.Sprintf("perf-%d", i),
					fmt.Sprintf("player-%d", i%100),
					time.Now(),
					map[metric.ID]float64{
						metric.PassingAccuracy: float64(50 + i%50),
					},
				)
				svc.Enqueue(ctx, a)
			}

			enqueueTime := time.Since(start)

			// Give workers time to process
			time.Sleep(2 * time.Second)

			Convey("Then enqueueing should be fast", func() {
				So(enqueueTime, ShouldBeLessThan, 5*time.Second)
			})

			Convey("And leaderboard queries should be fast", func() {
				start := time.Now()
				entries, err := svc.TopN(ctx, 100)
				queryTime := time.Since(start)

				So(err, ShouldBeNil)
				So(len(entries), ShouldBeGreaterThan, 0)
				So(queryTime, ShouldBeLessThan, 100*time.Millisecond)
			})

			Convey("And report queries should be fast", func() {
				start := time.Now()
				b, err := svc.Report(ctx, "player-0")
				queryTime := time.Since(start)

				So(err, ShouldBeNil)
				So(b.PlayerID, ShouldEqual, "player-0")
				So(queryTime, ShouldBeLessThan, 100*time.Millisecond)
			})
		})
	})
}
