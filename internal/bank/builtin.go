package bank

// BuiltinTopic holds the complete AWS certification set.
const BuiltinTopic = "AWS Certification"

var awsQuestions = []Question{
	{
		ID:           "aws-1",
		Prompt:       "Which AWS service is used for object storage?",
		Options:      []string{"Amazon EBS", "Amazon S3", "Amazon EFS", "Amazon FSx"},
		CorrectIndex: 1,
		Explanation:  "Amazon S3 (Simple Storage Service) is AWS's object storage service that offers industry-leading scalability, data availability, security, and performance.",
		Category:     "Storage",
	},
	{
		ID:           "aws-2",
		Prompt:       "What is the maximum execution time for an AWS Lambda function?",
		Options:      []string{"5 minutes", "10 minutes", "15 minutes", "30 minutes"},
		CorrectIndex: 2,
		Explanation:  "AWS Lambda functions can run for a maximum of 15 minutes (900 seconds). This limit was increased from 5 minutes in 2018.",
		Category:     "Compute",
	},
	{
		ID:           "aws-3",
		Prompt:       "Which AWS service provides a managed NoSQL database?",
		Options:      []string{"Amazon RDS", "Amazon DynamoDB", "Amazon Redshift", "Amazon Aurora"},
		CorrectIndex: 1,
		Explanation:  "Amazon DynamoDB is a fully managed NoSQL database service that provides fast and predictable performance with seamless scalability.",
		Category:     "Database",
	},
	{
		ID:           "aws-4",
		Prompt:       "What does VPC stand for in AWS?",
		Options:      []string{"Virtual Private Cloud", "Virtual Public Cloud", "Virtual Private Container", "Virtual Processing Center"},
		CorrectIndex: 0,
		Explanation:  "VPC stands for Virtual Private Cloud. It's a virtual network dedicated to your AWS account, isolated from other virtual networks in the AWS Cloud.",
		Category:     "Networking",
	},
	{
		ID:           "aws-5",
		Prompt:       "Which AWS service is used for content delivery and caching?",
		Options:      []string{"Amazon Route 53", "Amazon CloudFront", "Amazon ELB", "Amazon API Gateway"},
		CorrectIndex: 1,
		Explanation:  "Amazon CloudFront is a web service that speeds up distribution of your static and dynamic web content through a worldwide network of data centers called edge locations.",
		Category:     "Networking",
	},
	{
		ID:           "aws-6",
		Prompt:       "What is the default storage class for Amazon S3?",
		Options:      []string{"S3 Standard", "S3 Glacier", "S3 Standard-IA", "S3 One Zone-IA"},
		CorrectIndex: 0,
		Explanation:  "S3 Standard is the default storage class for Amazon S3, designed for frequently accessed data with high durability, availability, and performance.",
		Category:     "Storage",
	},
	{
		ID:           "aws-7",
		Prompt:       "Which AWS service provides DNS web service?",
		Options:      []string{"Amazon CloudFront", "Amazon Route 53", "Amazon VPC", "Amazon Direct Connect"},
		CorrectIndex: 1,
		Explanation:  "Amazon Route 53 is a highly available and scalable cloud Domain Name System (DNS) web service designed to route end users to Internet applications.",
		Category:     "Networking",
	},
	{
		ID:           "aws-8",
		Prompt:       "What is the minimum charge duration for AWS Lambda?",
		Options:      []string{"1ms", "100ms", "1 second", "1 minute"},
		CorrectIndex: 1,
		Explanation:  "AWS Lambda bills in 1ms increments, but has a minimum charge duration of 100ms for each invocation.",
		Category:     "Compute",
	},
	{
		ID:           "aws-9",
		Prompt:       "Which AWS service is used for monitoring and observability?",
		Options:      []string{"Amazon CloudWatch", "Amazon CloudTrail", "Amazon Inspector", "Amazon GuardDuty"},
		CorrectIndex: 0,
		Explanation:  "Amazon CloudWatch is a monitoring and observability service built for DevOps engineers, developers, site reliability engineers (SREs), and IT managers.",
		Category:     "Monitoring",
	},
	{
		ID:           "aws-10",
		Prompt:       "What is the maximum size of an object in Amazon S3?",
		Options:      []string{"5 GB", "5 TB", "100 GB", "1 TB"},
		CorrectIndex: 1,
		Explanation:  "The maximum size of an object in Amazon S3 is 5 TB (terabytes). Objects larger than 100 MB should be uploaded using the multipart upload capability.",
		Category:     "Storage",
	},
}

// BuiltinQuestions returns a copy of the AWS certification questions.
func BuiltinQuestions() []Question {
	out := make([]Question, len(awsQuestions))
	for idx, q := range awsQuestions {
		out[idx] = cloneQuestion(q)
	}
	return out
}

// Builtin returns the AWS bank: the full set first, then one topic per
// category.
func Builtin() *Bank {
	b := New()
	questions := BuiltinQuestions()
	// The built-in records are known to be valid.
	_ = b.Add(BuiltinTopic, questions)

	order, groups := GroupByCategory(questions)
	for _, category := range order {
		_ = b.Add(category, groups[category])
	}
	return b
}
